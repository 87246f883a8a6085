// Package types defines every cross‑package data structure used by the projinfo CLI.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// MarkerFile is the leaf marker recorded for a regular file.
	MarkerFile = "file"
	// MarkerIgnoredFile is the leaf marker recorded for a file matching an ignored extension.
	MarkerIgnoredFile = "ignored_file"

	// RootRelativePath is the relative path of the scan root itself.
	RootRelativePath = "."
)

// FileStatus classifies a file entry of the directory tree.
type FileStatus int

const (
	// FileStatusNormal marks a file that is listed in the tree.
	FileStatusNormal FileStatus = iota
	// FileStatusIgnored marks a file excluded by its extension.
	FileStatusIgnored
)

// Marker returns the leaf marker written for the status.
func (status FileStatus) Marker() string {
	if status == FileStatusIgnored {
		return MarkerIgnoredFile
	}
	return MarkerFile
}

// ParseFileStatus converts a leaf marker back into a FileStatus.
func ParseFileStatus(marker string) (FileStatus, error) {
	switch marker {
	case MarkerFile:
		return FileStatusNormal, nil
	case MarkerIgnoredFile:
		return FileStatusIgnored, nil
	default:
		return FileStatusNormal, fmt.Errorf("unknown leaf marker %q", marker)
	}
}

// Node is an entry of the directory tree: either a *Directory or a File.
type Node interface {
	isNode()
}

// File is a leaf of the directory tree.
type File struct {
	Status FileStatus
}

func (File) isNode() {}

// MarshalJSON encodes the file as its leaf marker string.
func (file File) MarshalJSON() ([]byte, error) {
	return encodeString(file.Status.Marker())
}

// Entry pairs a child name with its node.
type Entry struct {
	Name string
	Node Node
}

// Directory is a traversed directory holding children in insertion order.
type Directory struct {
	names    []string
	children map[string]Node
}

func (*Directory) isNode() {}

// NewDirectory returns an empty directory node.
func NewDirectory() *Directory {
	return &Directory{children: map[string]Node{}}
}

// Len returns the number of children.
func (directory *Directory) Len() int {
	return len(directory.names)
}

// Child returns the node stored under name.
func (directory *Directory) Child(name string) (Node, bool) {
	node, found := directory.children[name]
	return node, found
}

// Set stores node under name. Replacing an existing name keeps its position.
func (directory *Directory) Set(name string, node Node) {
	if directory.children == nil {
		directory.children = map[string]Node{}
	}
	if _, exists := directory.children[name]; !exists {
		directory.names = append(directory.names, name)
	}
	directory.children[name] = node
}

// Subdirectory returns the child directory called name, creating it when absent.
// An existing non-directory child under the same name is replaced.
func (directory *Directory) Subdirectory(name string) *Directory {
	if existing, found := directory.children[name]; found {
		if subdirectory, isDirectory := existing.(*Directory); isDirectory {
			return subdirectory
		}
	}
	subdirectory := NewDirectory()
	directory.Set(name, subdirectory)
	return subdirectory
}

// Entries returns the children in insertion order.
func (directory *Directory) Entries() []Entry {
	entries := make([]Entry, 0, len(directory.names))
	for _, name := range directory.names {
		entries = append(entries, Entry{Name: name, Node: directory.children[name]})
	}
	return entries
}

// MarshalJSON encodes the directory as an object whose members keep insertion order.
func (directory *Directory) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for index, name := range directory.names {
		if index > 0 {
			buffer.WriteByte(',')
		}
		encodedName, nameError := encodeString(name)
		if nameError != nil {
			return nil, nameError
		}
		buffer.Write(encodedName)
		buffer.WriteByte(':')
		encodedChild, childError := encodeNode(directory.children[name])
		if childError != nil {
			return nil, fmt.Errorf("encoding tree entry %s: %w", name, childError)
		}
		buffer.Write(encodedChild)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// UnmarshalJSON decodes an object of nested objects and leaf markers, keeping member order.
func (directory *Directory) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoded, decodeError := decodeDirectory(decoder)
	if decodeError != nil {
		return decodeError
	}
	*directory = *decoded
	return nil
}

func decodeDirectory(decoder *json.Decoder) (*Directory, error) {
	if err := expectDelimiter(decoder, '{'); err != nil {
		return nil, err
	}
	return decodeDirectoryBody(decoder)
}

// decodeDirectoryBody decodes a directory whose opening brace was already consumed.
func decodeDirectoryBody(decoder *json.Decoder) (*Directory, error) {
	directory := NewDirectory()
	for decoder.More() {
		name, nameError := decodeKey(decoder)
		if nameError != nil {
			return nil, nameError
		}
		token, tokenError := decoder.Token()
		if tokenError != nil {
			return nil, fmt.Errorf("decoding tree entry %s: %w", name, tokenError)
		}
		switch value := token.(type) {
		case json.Delim:
			if value != '{' {
				return nil, fmt.Errorf("tree entry %s: unexpected %v", name, value)
			}
			child, childError := decodeDirectoryBody(decoder)
			if childError != nil {
				return nil, childError
			}
			directory.Set(name, child)
		case string:
			status, statusError := ParseFileStatus(value)
			if statusError != nil {
				return nil, fmt.Errorf("tree entry %s: %w", name, statusError)
			}
			directory.Set(name, File{Status: status})
		default:
			return nil, fmt.Errorf("tree entry %s: unexpected value %v", name, value)
		}
	}
	if err := expectDelimiter(decoder, '}'); err != nil {
		return nil, err
	}
	return directory, nil
}

func encodeNode(node Node) ([]byte, error) {
	switch typed := node.(type) {
	case *Directory:
		return typed.MarshalJSON()
	case File:
		return typed.MarshalJSON()
	default:
		return nil, fmt.Errorf("unsupported tree node %T", node)
	}
}
