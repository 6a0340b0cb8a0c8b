package script

import (
	"github.com/df07/go-progressive-shading/pkg/material"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// Library holds the named definitions of one script
type Library struct {
	materials     map[string]material.Material
	textures      map[string]texture.Texture
	materialOrder []string
	textureOrder  []string
}

func newLibrary() *Library {
	return &Library{
		materials: make(map[string]material.Material),
		textures:  make(map[string]texture.Texture),
	}
}

// Material returns the material defined under name
func (l *Library) Material(name string) (material.Material, bool) {
	m, ok := l.materials[name]
	return m, ok
}

// Texture returns the texture defined under name
func (l *Library) Texture(name string) (texture.Texture, bool) {
	t, ok := l.textures[name]
	return t, ok
}

// MaterialNames lists material names in definition order
func (l *Library) MaterialNames() []string {
	return append([]string(nil), l.materialOrder...)
}

// TextureNames lists texture names in definition order
func (l *Library) TextureNames() []string {
	return append([]string(nil), l.textureOrder...)
}
