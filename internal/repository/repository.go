package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
//
// Conventions shared by all interfaces here:
//   - FindByID and friends return sql.ErrNoRows when the row is absent;
//     the service layer translates that to its own not-found sentinel.
//   - Existence probes used by the scheduler's conflict checks return
//     (nil, nil) when nothing matches, since absence is the common case.
//   - Delete returns sql.ErrNoRows when no row was removed.
