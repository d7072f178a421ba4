package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

var (
	// ErrIsCurrentDir is returned when a rename targets the directory being listed
	ErrIsCurrentDir = errors.New("file must not be current directory")
	// ErrIsDirectory is returned when Delete is handed a directory
	ErrIsDirectory = errors.New("deleting directories is not supported")
)

// MoveToTrash moves a file to the system trash/recycle bin
func MoveToTrash(path string) error {
	switch runtime.GOOS {
	case "darwin": // macOS
		script := fmt.Sprintf(`tell application "Finder" to delete POSIX file "%s"`, path)
		cmd := exec.Command("osascript", "-e", script)
		return cmd.Run()

	case "windows":
		cmd := exec.Command("powershell", "-Command", fmt.Sprintf(`Add-Type -AssemblyName Microsoft.VisualBasic; [Microsoft.VisualBasic.FileIO.FileSystem]::DeleteFile('%s', 'OnlyErrorDialogs', 'SendToRecycleBin')`, path))
		return cmd.Run()

	default: // Linux and others
		if commandExists("gio") {
			cmd := exec.Command("gio", "trash", path)
			return cmd.Run()
		}
		if commandExists("trash-put") {
			cmd := exec.Command("trash-put", path)
			return cmd.Run()
		}
		return fmt.Errorf("trash command not available (install trash-cli or gvfs)")
	}
}

// CreateFile creates a new empty file, failing if anything already exists
// at dir/name
func CreateFile(dir, name string) error {
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	return file.Close()
}

// Rename renames the hovered entry to dir/newName. The target must not
// exist unless it is the entry itself: os.Rename would silently replace
// it on POSIX systems.
func Rename(dir, hovered, newName string) error {
	if filepath.Clean(hovered) == filepath.Clean(dir) {
		return ErrIsCurrentDir
	}
	if newName == "" {
		return &fs.PathError{Op: "rename", Path: hovered, Err: fs.ErrInvalid}
	}

	newPath := filepath.Join(dir, newName)
	if newPath == filepath.Clean(hovered) {
		return os.Rename(hovered, newPath)
	}
	if _, err := os.Lstat(newPath); err == nil {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrExist}
	}
	return os.Rename(hovered, newPath)
}

// Delete removes a single non-directory entry. With useTrash the file is
// moved to the trash first, falling back to permanent removal.
func Delete(path string, useTrash bool) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ErrIsDirectory
	}

	if useTrash && info.Mode().IsRegular() {
		if err := MoveToTrash(path); err == nil {
			return nil
		}
	}
	return os.Remove(path)
}

// FormatError turns an operation failure into the sentence shown to the user
func FormatError(err error, path, operation string) error {
	if err == nil {
		return nil
	}

	name := filepath.Base(path)
	switch {
	case errors.Is(err, ErrIsCurrentDir), errors.Is(err, ErrIsDirectory):
		return fmt.Errorf("Error %s %q: %w", operation, name, err)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("Error %s %q: target already exists", operation, name)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("Error %s %q: no such file or directory", operation, name)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("Error %s %q: permission denied", operation, name)
	}
	return fmt.Errorf("Error %s %q: %w", operation, name, err)
}

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
