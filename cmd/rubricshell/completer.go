package main

import (
	"github.com/chzyer/readline"

	"github.com/iafilius/RubricViewer/src/traces"
)

// newCompleter completes command names and, for selection commands, curve ids
// from the registry.
func newCompleter(reg *traces.Registry) *readline.PrefixCompleter {
	curveIDs := func(string) []string { return idStrings(reg.Order()) }
	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, c := range commands {
		switch c {
		case "toggle", "on", "off":
			items = append(items, readline.PcItem(c, readline.PcItemDynamic(curveIDs)))
		case "zoom":
			items = append(items, readline.PcItem(c,
				readline.PcItem("in"), readline.PcItem("out"), readline.PcItem("reset")))
		case "legacy":
			items = append(items, readline.PcItem(c, readline.PcItem("clear")))
		case "json":
			items = append(items, readline.PcItem(c, readline.PcItem("-indent")))
		default:
			items = append(items, readline.PcItem(c))
		}
	}
	return readline.NewPrefixCompleter(items...)
}
