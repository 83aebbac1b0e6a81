package main

import "github.com/Tiliavir/trivial-job-tracker/cmd"

func main() {
	cmd.Execute()
}
