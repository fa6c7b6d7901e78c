package main

import "github.com/daiict/faculty-finder/cmd/facultyctl/cmd"

func main() {
	cmd.Execute()
}
