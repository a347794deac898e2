// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel shared by timestamped tables
//   - location.go: regions, divisions, subdivisions, neighborhoods
//   - listing.go: houses, house images, house types
//   - identity.go: users, roles, user roles, invite tokens, professional profiles
//
// Each model exposes ToDomain and a FromDomain constructor; repositories only
// ever hand domain values to their callers.
package models
