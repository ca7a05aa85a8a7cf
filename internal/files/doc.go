// Package files locates scoresheet workbooks on disk.
//
// Scoresheets follow a fixed naming convention of prefix, round number and
// room number:
//
//	scoresheets/MATCH10.xlsx   round 1, room 0
//	scoresheets/MATCH73.xlsx   round 7, room 3
//
// Example usage:
//
//	discovery := files.NewDiscovery("scoresheets", "MATCH")
//	path, err := discovery.Locate(domain.GameRef{Room: 0, Round: 1})
//
//	missing, err := discovery.Missing(4, 7)
package files
