// Package valvesearch finds the sequence of moves through a network of
// tunnels and pressure-release valves that releases the most pressure
// within a fixed turn budget.
//
// Layout:
//
//	core/      - valve names, dense name-keyed tables, the tunnel Graph and the line parser
//	bfs/       - shortest-path discovery from a valve to every useful valve
//	network/   - the immutable Network: valves plus their precomputed connections
//	search/    - the branching State search and its three strategies
//	internal/  - logging, HCL config, Prometheus metrics and the CLI
//	cmd/valves - the command-line entry point
//
// Quick example:
//
//	net, err := network.Parse(input)
//	if err != nil {
//	    return err
//	}
//	res, err := search.Solve(net, search.WithMaxTurns(30))
//	fmt.Println(res.Pressure) // 1651 for the ten-valve sample
//
// Command line:
//
//	go run ./cmd/valves -strategy parallel testdata/sample.txt
package valvesearch
