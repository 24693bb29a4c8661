// Command simulate runs a single email through the pipeline from the
// command line, printing the classification, audit trail, and drafted reply.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/agentia/vendormail/internal/api"
	"github.com/agentia/vendormail/internal/config"
	"github.com/agentia/vendormail/internal/infrastructure"
	"github.com/agentia/vendormail/internal/pipeline"
)

func main() {
	var (
		sender  = flag.String("sender", "", "Sender email address")
		thread  = flag.String("thread", "thread_demo_01", "Conversation thread id")
		subject = flag.String("subject", "Invoice Inquiry", "Email subject")
		body    = flag.String("body", "", "Email body")
		ingest  = flag.Bool("ingest", false, "Run data ingestion before the simulation")
		timeout = flag.Duration("timeout", 2*time.Minute, "Run timeout")
	)
	flag.Parse()

	if *sender == "" || *body == "" {
		log.Fatal("both -sender and -body are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed:", err)
	}

	if err := infra.Start(); err != nil {
		log.Fatal("infrastructure start failed:", err)
	}
	infra.Lifecycle.WaitForStartup()
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	runtime := api.NewRuntime(cfg, infra)
	domain := api.NewDomain(runtime)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *ingest {
		if err := domain.Ledger.IngestAll(ctx); err != nil {
			log.Fatal("ingest failed:", err)
		}
	}

	state, err := domain.Orchestrator.Run(ctx, pipeline.Email{
		ID:       fmt.Sprintf("sim_%d", time.Now().Unix()),
		ThreadID: *thread,
		Sender:   *sender,
		Subject:  *subject,
		Body:     *body,
	})
	if err != nil {
		log.Println("run finished with failure:", err)
	}

	resp := state.Response()

	fmt.Println("==================================================")
	fmt.Println("FINAL OUTPUT")
	fmt.Println("==================================================")
	fmt.Printf("AUTHORIZED: %v\n", resp.Authorized)
	fmt.Printf("INTENT: %s\n", state.Intent)
	fmt.Printf("AUDIT: %v\n", state.AuditTrail)
	fmt.Println("--------------------")
	fmt.Println("GENERATED EMAIL:")
	fmt.Println(resp.Reply)
	fmt.Println("==================================================")
}
