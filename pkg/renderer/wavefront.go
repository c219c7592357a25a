package renderer

import (
	"math"
	"math/rand"

	"github.com/fluidgravity/raychi/pkg/core"
	"github.com/fluidgravity/raychi/pkg/scene"
)

// maxGenerations bounds the wavefront loop per tile, in case a pathological
// scene keeps spawning rays
const maxGenerations = 100

// epsilon offsets secondary rays off surfaces to avoid self-intersection
const epsilon = 0.001

// rayKind distinguishes path-tracing rays from ambient occlusion probes
type rayKind int

const (
	rayPrimary rayKind = iota
	rayAmbient
)

// wavefrontRay is one queued unit of work in the ray pool
type wavefrontRay struct {
	PixelIndex int       // Flat index into the framebuffer
	Origin     core.Vec3 // Ray origin
	Direction  core.Vec3 // Normalized ray direction
	Depth      int       // Remaining bounce budget
	Weight     core.Vec3 // Accumulated path throughput
	Kind       rayKind
	ReqID      int // Index into the ambient request pool, -1 if not applicable
}

// ambientRequest accumulates occlusion results for one batch of AO probes
// spawned from a single surface hit
type ambientRequest struct {
	PixelIndex int
	Contrib    core.Vec3 // Ambient contribution before the occlusion factor
	Occluded   int       // Probes blocked within the AO distance
	Total      int       // Probes traced
}

// pipeline runs the wavefront loop for one tile at a time. Each worker owns
// one pipeline; the framebuffer is shared but tiles cover disjoint pixels, so
// no synchronization is needed on writes.
type pipeline struct {
	scene       *scene.Scene
	config      Config
	camera      *Camera
	framebuffer []core.Vec3

	pool     []wavefrontRay // Current generation
	next     []wavefrontRay // Next generation, swapped in after each pass
	requests []ambientRequest

	stats TileStats
}

// newPipeline creates a pipeline writing into the shared framebuffer
func newPipeline(sc *scene.Scene, config Config, camera *Camera, framebuffer []core.Vec3) *pipeline {
	return &pipeline{
		scene:       sc,
		config:      config,
		camera:      camera,
		framebuffer: framebuffer,
	}
}

// renderTile runs the full wavefront pipeline for one tile: seed camera rays,
// process generations until the pool drains, then resolve ambient occlusion
func (p *pipeline) renderTile(tile *Tile) TileStats {
	p.stats = TileStats{TileID: tile.ID, Bounds: tile.Bounds}
	p.pool = p.pool[:0]
	p.next = p.next[:0]
	p.requests = p.requests[:0]

	p.seedTile(tile)

	for len(p.pool) > 0 && p.stats.Generations < maxGenerations {
		p.stats.Generations++
		p.stats.Rays += len(p.pool)

		p.next = p.next[:0]
		for i := range p.pool {
			p.process(&p.pool[i], tile.Random)
		}
		p.pool, p.next = p.next, p.pool
	}

	p.resolveAmbient()
	return p.stats
}

// seedTile fills the pool with jittered camera rays for every pixel sample
func (p *pipeline) seedTile(tile *Tile) {
	width := float64(p.config.Width)
	height := float64(p.config.Height)
	white := core.NewVec3(1, 1, 1)

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			pixelIndex := y*p.config.Width + x
			for s := 0; s < p.config.SamplesPerPixel; s++ {
				u := (float64(x) + tile.Random.Float64()) / width
				v := 1.0 - (float64(y)+tile.Random.Float64())/height
				ray := p.camera.GetRay(u, v)

				p.enqueue(wavefrontRay{
					PixelIndex: pixelIndex,
					Origin:     ray.Origin,
					Direction:  ray.Direction,
					Depth:      p.config.MaxDepth,
					Weight:     white,
					Kind:       rayPrimary,
					ReqID:      -1,
				})
			}
		}
	}

	// Seeded rays start in the current pool, not the next generation
	p.pool, p.next = p.next, p.pool
}

// enqueue adds a ray to the next generation, respecting the pool capacity
func (p *pipeline) enqueue(ray wavefrontRay) {
	if len(p.next) >= p.config.MaxRayPool {
		p.stats.RayOverflow = true
		return
	}
	p.next = append(p.next, ray)
}

// process traces a single ray and queues any follow-up work
func (p *pipeline) process(r *wavefrontRay, random *rand.Rand) {
	if r.Kind == rayAmbient {
		p.traceAmbient(r)
		return
	}

	if r.Depth <= 0 {
		return
	}

	// Russian roulette: bounced rays survive with probability RRProb and are
	// reweighted to stay unbiased
	weight := r.Weight
	if r.Depth < p.config.MaxDepth {
		if random.Float64() > p.config.RRProb {
			return
		}
		weight = weight.Multiply(1.0 / p.config.RRProb)
	}

	ray := core.NewRay(r.Origin, r.Direction)
	hit, isHit := p.scene.Hit(ray, epsilon, math.Inf(1))
	if !isHit {
		p.addToPixel(r.PixelIndex, weight.MultiplyVec(backgroundColor(r.Direction)))
		return
	}

	// Emissive surfaces terminate the path
	if emitter, ok := hit.Material.(core.Emitter); ok {
		p.addToPixel(r.PixelIndex, weight.MultiplyVec(emitter.Emit()))
		return
	}

	if p.config.EnableDirectLighting {
		direct := p.directLighting(ray.Direction, hit)
		p.addToPixel(r.PixelIndex, weight.MultiplyVec(direct))
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if didScatter && r.Depth > 1 {
		p.enqueueBounce(r.PixelIndex, hit.Point, r.Depth-1,
			weight.MultiplyVec(scatter.Attenuation), scatter.Scattered.Direction)
	}

	if p.config.EnableAO {
		p.enqueueAmbient(r.PixelIndex, hit, weight, random)
	}
}

// enqueueBounce queues the scattered continuation of a path
func (p *pipeline) enqueueBounce(pixelIndex int, point core.Vec3, depth int, weight, direction core.Vec3) {
	direction = direction.Normalize()
	p.enqueue(wavefrontRay{
		PixelIndex: pixelIndex,
		Origin:     point.Add(direction.Multiply(epsilon)),
		Direction:  direction,
		Depth:      depth,
		Weight:     weight,
		Kind:       rayPrimary,
		ReqID:      -1,
	})
}

// enqueueAmbient queues an ambient request and its hemisphere probes
func (p *pipeline) enqueueAmbient(pixelIndex int, hit *core.HitRecord, weight core.Vec3, random *rand.Rand) {
	lit, ok := hit.Material.(core.DirectLit)
	if !ok {
		return
	}

	if len(p.requests) >= p.config.MaxAmbientRequests {
		p.stats.AmbientOverflow = true
		return
	}

	diffuse, _ := lit.PhongColors(hit.U, hit.V, hit.Point)
	reqID := len(p.requests)
	p.requests = append(p.requests, ambientRequest{
		PixelIndex: pixelIndex,
		Contrib:    weight.MultiplyVec(diffuse),
	})

	origin := hit.Point.Add(hit.Normal.Multiply(epsilon))
	white := core.NewVec3(1, 1, 1)
	for s := 0; s < p.config.NumAOSamples; s++ {
		p.enqueue(wavefrontRay{
			PixelIndex: pixelIndex,
			Origin:     origin,
			Direction:  core.SampleHemisphereCosine(hit.Normal, random),
			Depth:      0,
			Weight:     white,
			Kind:       rayAmbient,
			ReqID:      reqID,
		})
	}
}

// traceAmbient traces one ambient occlusion probe and records the result
func (p *pipeline) traceAmbient(r *wavefrontRay) {
	req := &p.requests[r.ReqID]
	req.Total++
	if _, occluded := p.scene.Occluded(r.Origin, r.Direction, p.config.MaxAODistance); occluded {
		req.Occluded++
	}
}

// resolveAmbient folds completed ambient requests into the framebuffer
func (p *pipeline) resolveAmbient() {
	for i := range p.requests {
		req := &p.requests[i]
		factor := 1.0
		if req.Total > 0 {
			factor = 1.0 - float64(req.Occluded)/float64(req.Total)
		}
		p.addToPixel(req.PixelIndex, req.Contrib.Multiply(factor))
	}
}

// addToPixel accumulates a contribution into the framebuffer
func (p *pipeline) addToPixel(pixelIndex int, color core.Vec3) {
	p.framebuffer[pixelIndex] = p.framebuffer[pixelIndex].Add(color)
}
