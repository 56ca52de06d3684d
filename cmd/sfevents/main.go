package main

import "github.com/goldengate-labs/sfevents/cmd/sfevents/cmd"

func main() {
	cmd.Execute()
}
