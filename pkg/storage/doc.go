// Package storage manages the save folder that downloaded media lands in.
//
// The storage package handles:
//   - Creating the save folder on startup
//   - Deriving a filename from a media URL and kind
//   - Probing name_1.ext, name_2.ext, ... when a file already exists
//   - Streaming payloads to disk in fixed-size chunks
//
// Writes go to a hidden temporary file in the save folder first and are
// renamed into place only after the whole payload arrived, so an aborted
// download never leaves a truncated file behind under the final name.
//
// Usage:
//
//	manager, err := storage.NewManager(saveFolder, config.DefaultChunkSize)
//	if err != nil {
//	    return err
//	}
//
//	name := storage.DeriveFilename(item, index)
//	path, size, err := manager.Save(body, name)
package storage
