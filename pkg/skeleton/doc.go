// Package skeleton installs a template database into the user data
// directory on first run.
//
// Desktop apps often ship a pre-built SQLite file with the schema and seed
// data in place. Install copies it to its writable location once and leaves
// it alone afterwards:
//
//	res, err := skeleton.Install(
//		filepath.Join(resources, "skeleton.db"),
//		paths.Database("app.db"),
//	)
//	if err != nil {
//		return err
//	}
//	if res.Copied {
//		log.Info("fresh database", "bytes", res.Bytes)
//	}
//
// InstallFS reads the template from an fs.FS, so it can be embedded:
//
//	//go:embed skeleton.db
//	var assets embed.FS
//
//	res, err := skeleton.InstallFS(assets, "skeleton.db", dst)
//
// Failures are DatabaseError values; the code tells ENOENT (template
// missing) and EISDIR (template is a directory) apart from I/O errors.
package skeleton
