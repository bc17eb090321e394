// Package main is the entry point for the internship management engine CLI.
package main

func main() {
	Execute()
}
