package slides

// Carousel is a wrap-around list of slides with a selection.
type Carousel struct {
	slides   []*Slide
	index    int
	onSelect []func(index int, s *Slide)
}

func NewCarousel(slides ...*Slide) *Carousel {
	return &Carousel{slides: slides}
}

// OnSelect registers fn to run whenever the selection changes.
func (c *Carousel) OnSelect(fn func(index int, s *Slide)) {
	c.onSelect = append(c.onSelect, fn)
}

func (c *Carousel) Len() int { return len(c.slides) }

func (c *Carousel) Index() int { return c.index }

// Selected returns the current slide, or nil for an empty carousel.
func (c *Carousel) Selected() *Slide {
	if len(c.slides) == 0 {
		return nil
	}
	return c.slides[c.index]
}

func (c *Carousel) Slide(i int) *Slide { return c.slides[i] }

// Select moves to index i, wrapping out-of-range values, and fires the
// select handlers.
func (c *Carousel) Select(i int) {
	n := len(c.slides)
	if n == 0 {
		return
	}
	i %= n
	if i < 0 {
		i += n
	}
	c.index = i
	for _, fn := range c.onSelect {
		fn(i, c.slides[i])
	}
}

func (c *Carousel) Next() { c.Select(c.index + 1) }

func (c *Carousel) Prev() { c.Select(c.index - 1) }

// Append adds slides to the end and returns the index of the first one.
func (c *Carousel) Append(slides ...*Slide) int {
	first := len(c.slides)
	c.slides = append(c.slides, slides...)
	return first
}
