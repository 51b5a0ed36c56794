package main

import "github.com/frahmantamala/timesheet-tracker/cmd"

func main() {
	cmd.Execute()
}
