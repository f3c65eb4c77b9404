package main

import "github.com/jfmyers9/spotisleep/cmd"

func main() {
	cmd.Execute()
}
