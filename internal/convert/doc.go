// Package convert runs the image-to-XTH pipeline for single pictures,
// files and directories.
//
// A Converter is built from an Options record and is safe for concurrent
// use: it holds no mutable state, and every call allocates its own
// intermediate images.
//
//	conv, err := convert.New(convert.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := conv.ConvertFile("photo.jpg") // writes photo.xth
//	if res.Err != nil {
//	    log.Printf("%s: %v", res.Input, res.Err)
//	}
package convert
