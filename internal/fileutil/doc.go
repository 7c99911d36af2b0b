// Package fileutil provides the directory walker used to collect project files.
//
// # Walk
//
// Walk visits every file under a root directory, top-down and depth-first:
//   - files of a directory are visited before its subdirectories
//   - entries are visited in os.ReadDir (lexical) order, so repeated walks of
//     an unchanged tree visit files in the same order
//   - with IncludeHidden off, hidden subdirectories are removed from the
//     to-visit list before recursion and hidden files are skipped
//   - symlinks to directories are never followed
//   - the first error (unreadable directory, or an error from the visitor)
//     aborts the walk
//
// # Usage
//
//	err := fileutil.Walk("/path/to/project", fileutil.WalkOptions{}, func(path, name string) error {
//	    fmt.Println(path)
//	    return nil
//	})
//
// Include hidden entries:
//
//	err := fileutil.Walk(root, fileutil.WalkOptions{IncludeHidden: true}, visit)
package fileutil
