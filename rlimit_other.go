//go:build !unix

package main

import "log"

func reportFileLimit(logger *log.Logger) {}
