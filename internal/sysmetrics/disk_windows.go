//go:build windows

package sysmetrics

const rootMount = `C:\`
