package services

import (
	"bytes"
	"image"
	"math"
	"math/rand"
	"sort"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

const (
	// colorCount is K for the dominant-color clustering.
	colorCount = 5

	// maxColorDim caps the longest side before thumbnailing; anything larger
	// (phone photos especially) costs decode-to-RGBA time for no gain in
	// color fidelity.
	maxColorDim = 1200

	// colorThumbSize is the final reduction clustered over. Cluster cost is
	// bounded by this, not by the original image size.
	colorThumbSize = 100

	// colorSeed fixes the centroid initialization so identical bytes always
	// produce identical samples. Cache keys and tests depend on this.
	colorSeed = 42

	kmeansMaxIterations = 20
)

type ColorSampler interface {
	// Extract reduces raw image bytes to at most colorCount dominant colors
	// with weights summing to 1.0, sorted by weight descending. Decode
	// failures and degenerate images yield an empty slice, never an error.
	Extract(img []byte) []types.ColorSample
}

type colorSampler struct {
	log *logger.Logger
}

func NewColorSampler(log *logger.Logger) ColorSampler {
	return &colorSampler{log: log.With("service", "ColorSampler")}
}

func (cs *colorSampler) Extract(raw []byte) []types.ColorSample {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		cs.log.Warn("could not decode image for color extraction", "error", err)
		return nil
	}

	pixels := samplePixels(src)
	if len(pixels) == 0 {
		return nil
	}

	centroids, counts := kmeans(pixels, colorCount, colorSeed)

	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return nil
	}

	samples := make([]types.ColorSample, 0, len(centroids))
	for i, c := range centroids {
		if counts[i] == 0 {
			continue
		}
		samples = append(samples, types.ColorSample{
			Hex:    types.HexColor(roundChannel(c[0]), roundChannel(c[1]), roundChannel(c[2])),
			Weight: float64(counts[i]) / float64(total),
		})
	}

	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].Weight != samples[j].Weight {
			return samples[i].Weight > samples[j].Weight
		}
		return samples[i].Hex < samples[j].Hex
	})
	return samples
}

// samplePixels downscales the source and flattens it into RGB vectors.
func samplePixels(src image.Image) [][3]float64 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	if w > maxColorDim || h > maxColorDim {
		w, h = fitWithin(w, h, maxColorDim)
		src = scaleTo(src, w, h)
	}
	if w > colorThumbSize || h > colorThumbSize {
		w, h = fitWithin(w, h, colorThumbSize)
		src = scaleTo(src, w, h)
	}

	rgba, ok := src.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	}

	out := make([][3]float64, 0, w*h)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			out = append(out, [3]float64{
				float64(row[x*4]),
				float64(row[x*4+1]),
				float64(row[x*4+2]),
			})
		}
	}
	return out
}

func fitWithin(w, h, max int) (int, int) {
	if w >= h {
		nh := int(math.Round(float64(h) * float64(max) / float64(w)))
		if nh < 1 {
			nh = 1
		}
		return max, nh
	}
	nw := int(math.Round(float64(w) * float64(max) / float64(h)))
	if nw < 1 {
		nw = 1
	}
	return nw, max
}

func scaleTo(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// kmeans runs Lloyd's algorithm with a seeded k-means++-style
// initialization, minimizing within-cluster sum of squares. Returns the
// final centroids and per-cluster pixel counts; empty clusters keep a zero
// count and are dropped by the caller.
func kmeans(points [][3]float64, k int, seed int64) ([][3]float64, []int) {
	if k > len(points) {
		k = len(points)
	}
	rng := rand.New(rand.NewSource(seed))
	centroids := seedCentroids(points, k, rng)

	assign := make([]int, len(points))
	counts := make([]int, k)

	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i := range counts {
			counts[i] = 0
		}
		for pi, p := range points {
			best, bestDist := 0, math.MaxFloat64
			for ci, c := range centroids {
				d := sqDist(p, c)
				if d < bestDist {
					best, bestDist = ci, d
				}
			}
			if assign[pi] != best {
				assign[pi] = best
				changed = true
			}
			counts[best]++
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][3]float64, k)
		for pi, p := range points {
			ci := assign[pi]
			sums[ci][0] += p[0]
			sums[ci][1] += p[1]
			sums[ci][2] += p[2]
		}
		for ci := range centroids {
			if counts[ci] == 0 {
				continue
			}
			n := float64(counts[ci])
			centroids[ci] = [3]float64{sums[ci][0] / n, sums[ci][1] / n, sums[ci][2] / n}
		}
	}
	return centroids, counts
}

// seedCentroids picks k starting points, spreading them by squared distance
// from the already-chosen set (the k-means++ weighting) using the seeded rng.
func seedCentroids(points [][3]float64, k int, rng *rand.Rand) [][3]float64 {
	centroids := make([][3]float64, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	dists := make([]float64, len(points))
	for len(centroids) < k {
		var sum float64
		for i, p := range points {
			best := math.MaxFloat64
			for _, c := range centroids {
				if d := sqDist(p, c); d < best {
					best = d
				}
			}
			dists[i] = best
			sum += best
		}
		if sum == 0 {
			// All remaining points coincide with a centroid; duplicate one to
			// keep k stable. Its cluster will simply end up empty.
			centroids = append(centroids, centroids[0])
			continue
		}
		target := rng.Float64() * sum
		var acc float64
		pick := len(points) - 1
		for i, d := range dists {
			acc += d
			if acc >= target {
				pick = i
				break
			}
		}
		centroids = append(centroids, points[pick])
	}
	return centroids
}

func sqDist(a, b [3]float64) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}

func roundChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
