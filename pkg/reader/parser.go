package reader

type parseState int

const (
	stateStart parseState = iota // waiting for stx
	stateCode                    // waiting for frame code
	stateLen                     // waiting for payload length
	stateData                    // receiving payload
)

// Parser consumes the serial byte stream one byte at a time and
// reassembles frames. Any byte that cannot continue the current frame
// drops the frame and resynchronizes on the next stx.
type Parser struct {
	state   parseState
	frame   *Frame
	recvLen int
}

// Reset drops any partial frame.
func (p *Parser) Reset() {
	p.state, p.frame = stateStart, nil
}

// Receiving reports whether a frame is partially assembled.
func (p *Parser) Receiving() bool {
	return p.state != stateStart
}

// Parse consumes one byte and returns a completed frame, or nil.
func (p *Parser) Parse(b byte) *Frame {
	switch p.state {
	case stateStart:
		if b == stx {
			p.state = stateCode
		}
	case stateCode:
		if b == 0 || b > maxDataLen {
			return p.resync()
		}
		p.frame = &Frame{Code: b}
		p.state = stateLen
	case stateLen:
		if b > maxDataLen {
			return p.resync()
		}
		if b == 0 {
			return p.frameReady()
		}
		p.frame.Data, p.recvLen = make([]byte, b), 0
		p.state = stateData
	case stateData:
		p.frame.Data[p.recvLen] = b
		p.recvLen++
		if p.recvLen == len(p.frame.Data) {
			return p.frameReady()
		}
	}
	return nil
}

func (p *Parser) resync() *Frame {
	p.state, p.frame = stateStart, nil
	return nil
}

func (p *Parser) frameReady() *Frame {
	f := p.frame
	p.state, p.frame = stateStart, nil
	return f
}
