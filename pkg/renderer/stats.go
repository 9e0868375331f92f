package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Tiles          int           // Tiles rendered
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of camera samples taken
	TotalBounces   int           // Scatter events across all paths
	Workers        int           // Worker goroutines used
	TilesPerWorker []int         // Tiles claimed by each worker
	Elapsed        time.Duration // Wall time of the render
}

// tileStats accumulates per-worker counts; merged into RenderStats after join
type tileStats struct {
	tiles   int
	pixels  int
	samples int
	bounces int
}

func (rs *RenderStats) add(worker int, ts tileStats) {
	rs.Tiles += ts.tiles
	rs.TotalPixels += ts.pixels
	rs.TotalSamples += ts.samples
	rs.TotalBounces += ts.bounces
	rs.TilesPerWorker[worker] = ts.tiles
}

// SamplesPerSecond returns the sample throughput of the render
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Elapsed <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Elapsed.Seconds()
}

// AverageBounces returns the mean path length in scatter events
func (rs RenderStats) AverageBounces() float64 {
	if rs.TotalSamples == 0 {
		return 0
	}
	return float64(rs.TotalBounces) / float64(rs.TotalSamples)
}
