package uart

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("shiftBuffer", func() {
	It("should size itself to the larger word", func() {
		Expect(newShiftBuffer(4, 2).bytes).To(HaveLen(4))
		Expect(newShiftBuffer(2, 4).bytes).To(HaveLen(4))
		Expect(newShiftBuffer(1, 1).bytes).To(HaveLen(1))
	})

	It("should shift in at the bottom and discard the top", func() {
		b := newShiftBuffer(3, 3)

		b.ShiftIn(0x11)
		b.ShiftIn(0x22)
		b.ShiftIn(0x33)
		Expect(b.bytes).To(Equal([]byte{0x33, 0x22, 0x11}))

		b.ShiftIn(0x44)
		Expect(b.bytes).To(Equal([]byte{0x44, 0x33, 0x22}))
	})

	It("should return the inbound window in reception order", func() {
		b := newShiftBuffer(4, 2)

		for _, v := range []byte{1, 2, 3, 4} {
			b.ShiftIn(v)
		}

		Expect(b.Window(4)).To(Equal([]byte{1, 2, 3, 4}))
	})

	It("should stage a loaded word with its first byte on top", func() {
		b := newShiftBuffer(4, 2)

		b.Load([]byte{0xAA, 0xBB})

		Expect(b.Top()).To(Equal(byte(0xAA)))
		b.ShiftIn(0)
		Expect(b.Top()).To(Equal(byte(0xBB)))
	})

	It("should leave bytes beyond the load window untouched", func() {
		b := newShiftBuffer(2, 4)

		for _, v := range []byte{1, 2, 3, 4} {
			b.ShiftIn(v)
		}
		b.Load([]byte{0xAA, 0xBB})

		// Capacity is 4 but the load window is the low 2 bytes.
		Expect(b.bytes[2]).To(Equal(byte(2)))
		Expect(b.bytes[3]).To(Equal(byte(1)))
		Expect(b.bytes[1]).To(Equal(byte(0xAA)))
		Expect(b.bytes[0]).To(Equal(byte(0xBB)))
	})

	It("should degenerate cleanly at capacity one", func() {
		b := newShiftBuffer(1, 1)

		b.ShiftIn(0x42)
		Expect(b.Top()).To(Equal(byte(0x42)))
		Expect(b.Window(1)).To(Equal([]byte{0x42}))

		b.Load([]byte{0x24})
		Expect(b.Top()).To(Equal(byte(0x24)))
	})

	It("should zero on reset", func() {
		b := newShiftBuffer(2, 2)
		b.ShiftIn(0xFF)
		b.reset()

		Expect(b.bytes).To(Equal([]byte{0, 0}))
	})
})
