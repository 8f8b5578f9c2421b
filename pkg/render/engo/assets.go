// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand/v2"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tankgame/pkg/entity"
)

// Thickness of turret barrels and bars in world units.
const (
	barrelThickness = 8
	barThickness    = 6
)

// AssetManager hands out the drawables for each entity kind.
type AssetManager struct {
	// Shape drawables by kind
	shapes map[entity.Kind]common.Drawable

	// Starfield behind the arena
	backgroundTexture common.Drawable
	backgroundImage   *image.NRGBA
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		shapes: map[entity.Kind]common.Drawable{
			entity.KindTank:       common.Circle{},
			entity.KindSpaceship:  common.Triangle{TriangleType: common.TriangleIsosceles},
			entity.KindTurret:     common.Rectangle{},
			entity.KindHealthBar:  common.Rectangle{},
			entity.KindProjectile: common.Circle{},
			entity.KindDebris:     common.Circle{},
		},
	}
}

// LoadAssets builds the background texture. It needs a live GL context.
func (am *AssetManager) LoadAssets(width, height int, seed uint64) error {
	am.backgroundImage = Starfield(width, height, seed)
	am.backgroundTexture = am.convertToEngoTexture(am.backgroundImage)
	return nil
}

// Drawable returns the shape used for kind.
func (am *AssetManager) Drawable(kind entity.Kind) common.Drawable {
	if d, ok := am.shapes[kind]; ok {
		return d
	}
	return common.Circle{}
}

// GetBackgroundTexture returns the background texture, nil before LoadAssets.
func (am *AssetManager) GetBackgroundTexture() common.Drawable {
	return am.backgroundTexture
}

// Extent is the size of the shape for v in world units.
func Extent(v entity.View) (width, height float64) {
	switch v.Kind {
	case entity.KindTurret:
		return v.Radius, barrelThickness
	case entity.KindHealthBar:
		return v.Width * v.Fill, barThickness
	default:
		return 2 * v.Radius, 2 * v.Radius
	}
}

// Starfield draws sparse white stars on a transparent image.
func Starfield(width, height int, seed uint64) *image.NRGBA {
	img := createBaseImage(width, height)
	rng := rand.New(rand.NewPCG(seed, seed+1))

	stars := width * height / 2000
	for i := 0; i < stars; i++ {
		shade := uint8(128 + rng.IntN(128))
		img.Set(rng.IntN(width), rng.IntN(height), color.NRGBA{shade, shade, shade, 255})
	}
	return img
}

// createBaseImage creates a transparent image with the specified dimensions.
func createBaseImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)
	return img
}

// convertToEngoTexture uploads an image as an Engo texture.
func (am *AssetManager) convertToEngoTexture(img *image.NRGBA) common.Drawable {
	texture := common.NewImageObject(img)
	return common.NewTextureSingle(texture)
}
