package main

import "github.com/ademuri/listening-stats/cmd"

func main() {
	cmd.Execute()
}
