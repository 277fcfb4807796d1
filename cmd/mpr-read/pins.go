//go:build (rp2040 || rp2350) && !nopins

package main

const usePins = true
