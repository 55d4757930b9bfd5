package uart

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controller", func() {
	var c *controller

	BeforeEach(func() {
		c = newController(4, 2)
	})

	It("should assemble an inbound word over four byte-ready pulses", func() {
		for i, b := range []byte{0x10, 0x20, 0x30} {
			out := c.step(b, true, false, nil, false)

			Expect(out.inboundReady).To(BeFalse())
			Expect(c.count).To(Equal(i + 1))
		}

		out := c.step(0x40, true, false, nil, false)

		Expect(out.inboundReady).To(BeTrue())
		Expect(c.state).To(Equal(ctrlWaiting))
		Expect(c.inboundWord()).To(Equal([]byte{0x10, 0x20, 0x30, 0x40}))
	})

	It("should hold the read count while the receiver is quiet", func() {
		c.step(0x10, true, false, nil, false)

		for i := 0; i < 5; i++ {
			out := c.step(0, false, false, nil, false)

			Expect(out.inboundReady).To(BeFalse())
		}

		Expect(c.count).To(Equal(1))
	})

	It("should wait for the result before writing", func() {
		driveToWaiting(c)

		out := c.step(0, false, false, nil, false)

		Expect(out.txStrobe).To(BeFalse())
		Expect(c.state).To(Equal(ctrlWaiting))
	})

	It("should drain the result word top byte first", func() {
		driveToWaiting(c)

		out := c.step(0, false, false, []byte{0xA1, 0xB2}, true)
		Expect(out.txStrobe).To(BeFalse())
		Expect(c.state).To(Equal(ctrlWriting))

		// First byte is offered until the transmitter accepts it.
		out = c.step(0, false, false, nil, false)
		Expect(out.txStrobe).To(BeTrue())
		Expect(out.txByte).To(Equal(byte(0xA1)))

		out = c.step(0, false, true, nil, false)
		Expect(out.txStrobe).To(BeTrue())
		Expect(out.txByte).To(Equal(byte(0xB2)))

		out = c.step(0, false, false, nil, false)
		Expect(out.txByte).To(Equal(byte(0xB2)))

		out = c.step(0, false, true, nil, false)
		Expect(out.txStrobe).To(BeFalse())
		Expect(c.state).To(Equal(ctrlReading))
		Expect(c.count).To(Equal(0))
	})

	It("should cycle single-byte words back to back", func() {
		c = newController(1, 1)

		out := c.step(0x55, true, false, nil, false)
		Expect(out.inboundReady).To(BeTrue())
		Expect(c.inboundWord()).To(Equal([]byte{0x55}))

		c.step(0, false, false, []byte{0xAA}, true)

		out = c.step(0, false, false, nil, false)
		Expect(out.txStrobe).To(BeTrue())
		Expect(out.txByte).To(Equal(byte(0xAA)))

		out = c.step(0, false, true, nil, false)
		Expect(out.txStrobe).To(BeFalse())
		Expect(c.state).To(Equal(ctrlReading))
	})

	It("should return to the read phase on reset", func() {
		driveToWaiting(c)
		c.reset()

		Expect(c.state).To(Equal(ctrlReading))
		Expect(c.count).To(Equal(0))
		Expect(c.inboundWord()).To(Equal([]byte{0, 0, 0, 0}))
	})
})

func driveToWaiting(c *controller) {
	for i := 0; i < c.inSize; i++ {
		c.step(byte(i), true, false, nil, false)
	}
}
