// Package backup snapshots project files before a conversion overwrites
// them.
//
// Each snapshot is a directory holding copies of the files and a
// manifest.json describing them:
//
//	<data home>/aibridge/backups/
//	└── {platform}/
//	    └── {id}/
//	        ├── manifest.json
//	        └── {copied files...}
//
// The platform is the conversion target whose files were about to be
// replaced. IDs combine a UTC timestamp with a short random suffix, so two
// snapshots taken in the same second do not collide.
//
// # Usage
//
//	mgr := backup.NewManager()
//	manifest, err := mgr.Backup("codex", projectDir, []string{
//	    filepath.Join(projectDir, "AGENTS.md"),
//	    filepath.Join(projectDir, ".codex", "config.toml"),
//	})
//
// Missing paths are skipped. [Manager.Restore] copies the files back after
// verifying their SHA256 checksums, [Manager.List] returns snapshots newest
// first and [Manager.Prune] keeps only the most recent ones.
//
// # Errors
//
//   - [ErrNoBackupsFound]: no snapshot exists for the platform or ID
//   - [ErrNothingToBackUp]: none of the given paths exist
//   - [ErrBackupCorrupted]: a stored file no longer matches its checksum
package backup
