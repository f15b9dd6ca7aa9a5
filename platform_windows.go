//go:build windows

package main

import _ "github.com/mj1618/windows-mcp/internal/platform/windows"
