package main

import (
	"medicollector/cmd/medcollect/commands"
	"medicollector/lib/util/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()
	commands.ExecuteContext(ctx)
}
