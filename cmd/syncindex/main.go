// Command syncindex pulls a freshly built index snapshot from a remote
// build host down to the local serving machine, writing through a temp
// file so a serving process never opens a half-copied database.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/eci-voterfind/voterfind/internal/ops"
)

var (
	host     = flag.String("host", "", "build host (host or host:port)")
	user     = flag.String("user", "", "ssh username")
	password = flag.String("password", "", "ssh password")
	remote   = flag.String("remote", "/var/lib/voterfind/voterfind.db", "remote snapshot path")
	local    = flag.String("local", "voterfind.db", "local snapshot path")
	timeout  = flag.Duration("timeout", 10*time.Second, "ssh dial timeout")
)

func main() {
	flag.Parse()
	if *host == "" || *user == "" {
		log.Fatal("[syncindex] --host and --user are required")
	}

	syncer, err := ops.Dial(ops.SyncConfig{
		Host:       *host,
		Username:   *user,
		Password:   *password,
		RemotePath: *remote,
		LocalPath:  *local,
		Timeout:    *timeout,
	})
	if err != nil {
		log.Fatalf("[syncindex] %v", err)
	}
	defer syncer.Close()

	size, err := syncer.RemoteSnapshotSize()
	if err != nil {
		log.Fatalf("[syncindex] %v", err)
	}
	log.Printf("[syncindex] remote snapshot is %d bytes, pulling...", size)

	start := time.Now()
	if err := syncer.PullSnapshot(); err != nil {
		log.Fatalf("[syncindex] %v", err)
	}
	log.Printf("[syncindex] snapshot synced to %s in %s", *local, time.Since(start))
}
