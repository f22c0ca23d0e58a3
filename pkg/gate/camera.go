package gate

import (
	"fmt"

	"gocv.io/x/gocv"
)

// FrameSource abstracts a camera device producing ordered frames.
// Read hands ownership of the returned Mat to the caller.
type FrameSource interface {
	Read() (gocv.Mat, bool)
	Close() error
}

// Camera is a FrameSource backed by a local capture device.
type Camera struct {
	device *gocv.VideoCapture
}

// OpenCamera opens the capture device at the given index. Failure here
// is fatal to the loop's start, not to the process.
func OpenCamera(index int) (*Camera, error) {
	device, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", index, err)
	}
	return &Camera{device: device}, nil
}

// Read captures the next frame. It returns false when the device
// produces no frame.
func (c *Camera) Read() (gocv.Mat, bool) {
	frame := gocv.NewMat()
	if ok := c.device.Read(&frame); !ok || frame.Empty() {
		frame.Close()
		return gocv.Mat{}, false
	}
	return frame, true
}

// Close releases the capture device.
func (c *Camera) Close() error {
	return c.device.Close()
}
