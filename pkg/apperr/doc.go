// Package apperr defines the typed error hierarchy shared by deskit packages.
//
// Every failure is an *Error with a Kind, an optional machine subcode and the
// original cause. Kinds are matched with errors.Is against package sentinels,
// subcodes are read with Code:
//
//	err := catalog.Init(opts)
//	if errors.Is(err, apperr.ErrCatalog) && apperr.Code(err) == apperr.CodeParse {
//		// a translation file is not valid JSON
//	}
//
// Filesystem failures keep the *fs.PathError as cause and map it to ENOENT,
// EPERM, EEXIST, a symbolic errno name, or EIO (see FSCode).
package apperr
