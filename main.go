package main

import "github.com/jsphweid/midistrip/cmd"

func main() {
	cmd.Execute()
}
