// Package coursetree extracts the hierarchical structure of public training
// courses (course → learning path → module → unit → content block) and
// serializes it into machine-consumable formats for language-model grounding.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package coursetree
