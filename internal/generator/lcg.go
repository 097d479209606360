package generator

import "seededrand/lcg"

// LCG adapts a seeded lcg.Stream to the Generator interface.
type LCG struct {
	stream *lcg.Stream
}

// NewLCG wraps stream.
func NewLCG(stream *lcg.Stream) *LCG {
	return &LCG{stream: stream}
}

// Name returns the generator name
func (g *LCG) Name() string {
	return "Java LCG"
}

// GenerateBytes fills a fresh buffer from the stream.
func (g *LCG) GenerateBytes(numBytes int) ([]byte, error) {
	result := make([]byte, numBytes)
	g.stream.Bytes(result)
	return result, nil
}
