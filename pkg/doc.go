// Package pkg provides the core libraries for packsmith booster assembly and
// sheet packing.
//
// # Overview
//
// Packsmith turns a directory of rendered card images into draft-ready
// output: rarity-correct boosters and fixed-grid deck sheet textures for
// virtual tabletop import. The pkg directory is organized into five areas:
//
//  1. [pool] - Loading and classifying card images into rarity/land buckets
//  2. [booster] - Seed-controlled booster assembly and land boosters
//  3. [sheet] - Grid layout and parallel sheet composition
//  4. [export] - Output directories, sheet files, manifests, booster folders
//  5. [pipeline] - Orchestration (load → assemble → pack → export)
//
// # Architecture
//
// The typical data flow through packsmith:
//
//	Card images + metadata sidecars
//	         ↓
//	    [pool] package (classify into buckets)
//	         ↓
//	    [booster] package (assemble boosters)
//	         ↓
//	    [sheet] package (layout + compose textures)
//	         ↓
//	    [export] package (sheets, manifest, booster folders)
//
// The [errors] package carries structured error codes across all stages, and
// [buildinfo] holds the version identity injected at build time.
package pkg
