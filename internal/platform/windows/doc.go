// Package windows reads the desktop through the Win32 window tree and GDI.
// Every file except this one builds only on Windows; elsewhere the package
// is empty and platform.NewProvider reports ErrUnsupported.
package windows
