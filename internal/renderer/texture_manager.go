package renderer

import (
	"Starfield/internal/logger"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type TextureState int

const (
	TEXTURE_PENDING  TextureState = iota // Decode requested, not finished
	TEXTURE_DECODED                      // Pixels ready, waiting for GPU upload
	TEXTURE_UPLOADED                     // Living on the GPU
	TEXTURE_FAILED                       // Load failed, placeholder stays in use
)

func (s TextureState) String() string {
	switch s {
	case TEXTURE_PENDING:
		return "pending"
	case TEXTURE_DECODED:
		return "decoded"
	case TEXTURE_UPLOADED:
		return "uploaded"
	case TEXTURE_FAILED:
		return "failed"
	}
	return "unknown"
}

// Texture is a handle to an image that may still be loading. Until it is
// uploaded the renderer draws with the placeholder texture instead.
type Texture struct {
	Path string

	mu     sync.Mutex
	state  TextureState
	pixels *image.RGBA // dropped once uploaded
	width  int
	height int
	err    error
	id     uint32
}

func (t *Texture) State() TextureState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Err returns the load error of a failed texture.
func (t *Texture) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Size returns the decoded image size, or zero while pending or failed.
func (t *Texture) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// ID returns the GPU texture id, zero until uploaded.
func (t *Texture) ID() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id
}

func (t *Texture) resolve(pixels *image.RGBA, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.state = TEXTURE_FAILED
		t.err = err
		return
	}
	t.pixels = pixels
	t.width, t.height = pixels.Rect.Dx(), pixels.Rect.Dy()
	t.state = TEXTURE_DECODED
}

// takePixels hands the decoded pixels to the uploader exactly once.
func (t *Texture) takePixels() *image.RGBA {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TEXTURE_DECODED || t.pixels == nil {
		return nil
	}
	return t.pixels
}

func (t *Texture) markUploaded(id uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.id = id
	t.pixels = nil
	t.state = TEXTURE_UPLOADED
}

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	FailedTextures int
}

// TextureManager loads textures asynchronously and caches them by path.
// Decoding happens on a worker pool; GPU upload is left to the renderer.
type TextureManager struct {
	textureCache    map[string]*Texture
	textureRefCount map[string]int
	tasks           []pond.Task
	pool            pond.Pool
	mu              sync.Mutex
	stats           TextureStats
}

func NewTextureManager(workers int) *TextureManager {
	if workers <= 0 {
		workers = 1
	}
	return &TextureManager{
		textureCache:    make(map[string]*Texture),
		textureRefCount: make(map[string]int),
		pool:            pond.NewPool(workers),
	}
}

// Load returns the texture handle for filePath, starting the decode on first use.
// It never blocks and never fails; errors surface through the handle.
func (tm *TextureManager) Load(filePath string) *Texture {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if texture, exists := tm.textureCache[filePath]; exists {
		tm.textureRefCount[filePath]++
		tm.stats.CacheHits++

		logger.Log.Debug("Texture cache hit",
			zap.String("path", filePath),
			zap.Int("refCount", tm.textureRefCount[filePath]))

		return texture
	}

	tm.stats.CacheMisses++
	tm.stats.TotalTextures++

	texture := &Texture{Path: filePath, state: TEXTURE_PENDING}
	tm.textureCache[filePath] = texture
	tm.textureRefCount[filePath] = 1

	task := tm.pool.SubmitErr(func() error {
		pixels, err := DecodeTexture(filePath)
		texture.resolve(pixels, err)
		if err != nil {
			tm.mu.Lock()
			tm.stats.FailedTextures++
			tm.mu.Unlock()
			logger.Log.Warn("Texture load failed", zap.String("path", filePath), zap.Error(err))
			return err
		}
		logger.Log.Info("Texture decoded",
			zap.String("path", filePath),
			zap.Int("width", pixels.Rect.Dx()),
			zap.Int("height", pixels.Rect.Dy()))
		return nil
	})
	tm.tasks = append(tm.tasks, task)

	return texture
}

// Wait blocks until every requested texture has finished decoding.
func (tm *TextureManager) Wait() {
	tm.mu.Lock()
	tasks := append([]pond.Task(nil), tm.tasks...)
	tm.mu.Unlock()

	for _, task := range tasks {
		_ = task.Wait()
	}
}

// RefCount returns how many times path was requested.
func (tm *TextureManager) RefCount(filePath string) int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.textureRefCount[filePath]
}

// GetStats returns current texture manager statistics
func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.stats
}

// LogStats logs current texture statistics
func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	logger.Log.Info("Texture Manager Stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("failedTextures", stats.FailedTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses))
}

// Close stops the decode pool after in-flight loads finish.
func (tm *TextureManager) Close() {
	tm.pool.StopAndWait()
}

// DecodeTexture reads an image file and returns it as RGBA flipped vertically,
// so that row zero is the bottom row as OpenGL expects.
func DecodeTexture(filePath string) (*image.RGBA, error) {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer imgFile.Close()

	img, _, err := image.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return flipVertical(rgba), nil
}

func flipVertical(src *image.RGBA) *image.RGBA {
	height := src.Rect.Dy()
	rowBytes := src.Rect.Dx() * 4
	dst := image.NewRGBA(src.Rect)
	for y := 0; y < height; y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+rowBytes]
		dstOffset := (height - 1 - y) * dst.Stride
		copy(dst.Pix[dstOffset:dstOffset+rowBytes], srcRow)
	}
	return dst
}
