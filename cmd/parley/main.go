// Package main is the entry point for the parley console.
package main

func main() {
	Execute()
}
