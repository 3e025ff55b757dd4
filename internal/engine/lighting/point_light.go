package lighting

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 4

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Distance at which the light reaches zero
	Intensity float32
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	if light.Range <= 0 {
		light.Range = 1
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// Positions returns positions as a flat slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) Positions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Position[:])
	}
	return result
}

// Colors returns colors premultiplied by intensity as a flat slice for GPU
// upload.
func (b *PointLightBuffer) Colors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Color[0] * light.Intensity
		result[i*3+1] = light.Color[1] * light.Intensity
		result[i*3+2] = light.Color[2] * light.Intensity
	}
	return result
}

// Ranges returns ranges as a flat slice for GPU upload.
func (b *PointLightBuffer) Ranges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}
