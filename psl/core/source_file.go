// Package core provides the source and datasource types shared by the PSL packages.
package core

// SourceFile represents a source file with its content.
type SourceFile struct {
	Path string
	Data string
}

// NewSourceFile creates a new SourceFile.
func NewSourceFile(path, data string) SourceFile {
	return SourceFile{
		Path: path,
		Data: data,
	}
}


// Lines returns the number of lines in the file.
func (f SourceFile) Lines() int {
	if f.Data == "" {
		return 0
	}
	n := 1
	for i := 0; i < len(f.Data)-1; i++ {
		if f.Data[i] == '\n' {
			n++
		}
	}
	return n
}
