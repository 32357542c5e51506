package benchmarks

import (
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/vitelabs/vitehnsw/graph"
)

// BenchmarkGraphConstruction measures bulk-insert throughput at several
// graph sizes, adapted from the prior BenchmarkHNSWConstruction: same
// seeded-RNG-shared-across-runs shape, same vectors/sec reporting, now
// driving graph.Insert under cosine distance instead of hnsw.Insert under
// a pluggable Euclidean/cosine distance func.
func BenchmarkGraphConstruction(b *testing.B) {
	seedStr := os.Getenv("VITEHNSW_RAND_SEED")
	seedVal := uint64(42)
	if seedStr != "" {
		if val, err := strconv.ParseUint(seedStr, 10, 64); err == nil {
			seedVal = val
		}
	}

	rng := rand.New(rand.NewPCG(seedVal, seedVal))
	runtime.GC()

	configs := []struct {
		name      string
		numVecs   int
		dimension int
	}{
		{"small", 1000, 128},
		{"medium", 10000, 128},
	}

	for _, cfg := range configs {
		vectors := generateRandomVectorsWithRNG(cfg.numVecs, cfg.dimension, rng)

		b.Run(fmt.Sprintf("Build_%s_%dv_%dd", cfg.name, cfg.numVecs, cfg.dimension), func(b *testing.B) {
			b.ReportAllocs()

			var totalInsertTime time.Duration
			var totalVectors int

			for i := 0; i < b.N; i++ {
				b.StopTimer()
				g, err := graph.New(vectors[0], 16, 16, 32, 100)
				if err != nil {
					b.Fatalf("graph.New: %v", err)
				}
				runtime.GC()
				b.StartTimer()

				start := time.Now()
				for j := 1; j < len(vectors); j++ {
					if err := g.Insert(vectors[j]); err != nil {
						b.Fatalf("Insert: %v", err)
					}
				}
				elapsed := time.Since(start)
				totalInsertTime += elapsed
				totalVectors += len(vectors) - 1

				b.ReportMetric(float64(len(vectors)-1)/elapsed.Seconds(), "vectors/sec")
			}

			if totalInsertTime > 0 {
				fmt.Printf("Average insertion rate: %.2f vectors/sec\n", float64(totalVectors)/totalInsertTime.Seconds())
			}
		})
	}
}

func generateRandomVectorsWithRNG(count, dim int, rng *rand.Rand) [][]float64 {
	vectors := make([][]float64, count)
	for i := range vectors {
		vectors[i] = make([]float64, dim)
		for j := range vectors[i] {
			vectors[i][j] = rng.Float64()*2 - 1
		}
	}
	return vectors
}

func generateRandomVectors(count, dim int) [][]float64 {
	return generateRandomVectorsWithRNG(count, dim, rand.New(rand.NewPCG(1, 1)))
}
