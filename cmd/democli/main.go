// Command democli runs a traffic light statechart for a fixed number of
// cycles, printing each macrostep's configuration, persisting a snapshot
// after every tick, and draining published macrosteps on the side.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comalice/exm/internal/primitives"
	"github.com/comalice/exm/internal/production"
	"github.com/comalice/exm/snapshot"
)

func trafficLight() (*primitives.Statechart, error) {
	return primitives.Build(primitives.CompositeState{
		Initial: "red",
		Substates: map[string]primitives.Definition{
			"red":    primitives.SimpleState{Transitions: map[string]primitives.TransitionSpec{"timer": primitives.To("green")}},
			"green":  primitives.SimpleState{Transitions: map[string]primitives.TransitionSpec{"timer": primitives.To("yellow")}},
			"yellow": primitives.SimpleState{Transitions: map[string]primitives.TransitionSpec{"timer": primitives.To("red")}},
		},
	})
}

func main() {
	sc, err := trafficLight()
	if err != nil {
		panic(err)
	}

	persister, err := snapshot.NewJSONPersister("/tmp/democli")
	if err != nil {
		panic(err)
	}

	publishCh := make(chan production.PublishedMacrostep, 100)
	publisher := production.NewChannelPublisher(publishCh)
	visualizer := production.Visualizer{}

	m := primitives.Init(sc, primitives.NewContext())

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	cycles := 0
	for {
		select {
		case <-ticker.C:
			m, err = m.Dispatch("timer")
			if err != nil {
				fmt.Printf("dispatch error: %v\n", err)
				continue
			}
			cycles++

			fmt.Printf("\n--- cycle %d ---\n", cycles)
			fmt.Println("active states:", m.ActiveStates())
			fmt.Println(visualizer.ExportDOT(sc, m.ActiveStates()))

			if err := persister.Save(context.Background(), snapshot.From("traffic-light", m)); err != nil {
				fmt.Printf("save error: %v\n", err)
			}
			if err := publisher.Publish(context.Background(), "traffic-light", m.LastMacrostep()); err != nil {
				fmt.Printf("publish error: %v\n", err)
			}
			select {
			case step := <-publishCh:
				fmt.Printf("published macrostep for %s: %v\n", step.MachineID, step.Macrostep.TransitionNames())
			default:
			}

			if cycles >= 12 {
				fmt.Println("demo complete after 12 cycles.")
				return
			}
		case <-sig:
			fmt.Println("\nshutting down gracefully...")
			return
		}
	}
}
