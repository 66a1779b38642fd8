package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// starterManifest is the stack berth was built around: an IPFS node and a
// Postgres instance for an indexing node, with a Prometheus/Grafana pair
// watching them. The indexing node itself and a Postgres web console ship
// disabled so the file documents how to wire them without running them.
const starterManifest = `name: indexer
version: "1"

services:
  - name: ipfs
    image: ipfs/kubo:v0.17.0
    ports:
      - "5001:5001"
    volumes:
      - data/ipfs:/data/ipfs

  - name: postgres
    image: postgres:14
    command:
      - postgres
      - -cshared_preload_libraries=pg_stat_statements
    ports:
      - "5432:5432"
    environment:
      - POSTGRES_USER=indexer
      - POSTGRES_PASSWORD=let-me-in
      - POSTGRES_DB=indexer
      - PGDATA=/var/lib/postgresql/data
      - POSTGRES_INITDB_ARGS=-E UTF8 --locale=C
    volumes:
      - data/postgres:/var/lib/postgresql/data

  - name: prometheus
    image: prom/prometheus:v2.45.0
    command:
      - --config.file=/etc/prometheus/prometheus.yml
      - --storage.tsdb.path=/prometheus
      - --storage.tsdb.retention.time=30d
      - --web.console.libraries=/usr/share/prometheus/console_libraries
      - --web.console.templates=/usr/share/prometheus/consoles
      - --web.enable-lifecycle
    ports:
      - "9090:9090"
    volumes:
      - prometheus/prometheus.yml:/etc/prometheus/prometheus.yml
      - data/prometheus:/prometheus

  - name: grafana
    image: grafana/grafana:10.1.0
    command:
      - --config=/etc/grafana/grafana.ini
    ports:
      - "3000:3000"
    volumes:
      - grafana/grafana.ini:/etc/grafana/grafana.ini
      - grafana/provisioning:/etc/grafana/provisioning

  # Flip 'disabled' to run an indexing node against ipfs and postgres.
  - name: index-node
    image: graphprotocol/graph-node:v0.33.0
    disabled: true
    ports:
      - "8000:8000"
      - "8020:8020"
      - "8030:8030"
      - "8040:8040"
    environment:
      - postgres_host=postgres
      - postgres_user=indexer
      - postgres_pass=let-me-in
      - postgres_db=indexer
      - ipfs=ipfs:5001

  - name: pgweb
    image: sosedoff/pgweb:0.14.1
    disabled: true
    command:
      - pgweb
      - --bind=0.0.0.0
      - --listen=8081
    ports:
      - "8081:8081"
`

const starterPrometheusConfig = `global:
  scrape_interval: 15s

scrape_configs:
  - job_name: prometheus
    static_configs:
      - targets: ["localhost:9090"]
`

const starterGrafanaConfig = `[security]
admin_user = admin
admin_password = admin

[paths]
provisioning = /etc/grafana/provisioning
`

// WriteStarter materializes the starter manifest as fileName inside dir,
// along with the host directories and config files its volume bindings
// reference. It refuses to overwrite an existing manifest.
func WriteStarter(dir, fileName string) error {
	manifestPath := filepath.Join(dir, fileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", manifestPath)
	}

	for _, sub := range []string{
		filepath.Join("data", "ipfs"),
		filepath.Join("data", "postgres"),
		filepath.Join("data", "prometheus"),
		"prometheus",
		filepath.Join("grafana", "provisioning"),
	} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", sub, err)
		}
	}

	files := map[string]string{
		manifestPath: starterManifest,
		filepath.Join(dir, "prometheus", "prometheus.yml"): starterPrometheusConfig,
		filepath.Join(dir, "grafana", "grafana.ini"):       starterGrafanaConfig,
	}
	for name, content := range files {
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	return nil
}
