package carousel_test

import (
	"fmt"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
)

func Example() {
	entries := func(names ...string) []carousel.Option {
		options := make([]carousel.Option, len(names))
		for i, name := range names {
			options[i] = carousel.Option{
				Name:   name,
				Index:  i + 1,
				Action: func() { fmt.Println("launching", name) },
			}
		}
		return options
	}

	c := carousel.New([]carousel.PageSpec{
		{Title: "Launch", Options: entries("Android", "Ubuntu", "Lakka")},
		{Title: "System Options", Options: entries("Bootloader", "Reboot", "Shutdown")},
	}, carousel.Settings{Immediate: true})

	unsubscribe := c.Subscribe(func(e carousel.Event) {
		switch e := e.(type) {
		case carousel.PageChanged:
			fmt.Printf("page %d (previous=%v next=%v)\n", e.PageIndex, e.CanGoPrevious, e.CanGoNext)
		case carousel.SelectionChanged:
			fmt.Printf("page %d selected %d\n", e.PageIndex, e.SelectedIndex)
		}
	})
	defer unsubscribe()

	c.Handle(carousel.KeyEvent{Key: carousel.KeyRight})
	c.Handle(carousel.KeyEvent{Key: carousel.KeyRight})
	c.Handle(carousel.KeyEvent{Key: carousel.KeyDown})
	c.Handle(carousel.KeyEvent{Key: carousel.KeyEnter})

	// Output:
	// page 0 selected 0
	// page 0 selected 1
	// page 1 (previous=true next=false)
	// page 1 selected 1
	// launching Reboot
}

func ExampleComputeLayout() {
	for _, n := range []int{2, 6, 10} {
		l := carousel.ComputeLayout(n, true)
		fmt.Printf("%d items: %dx%d\n", n, l.Columns, l.Rows)
	}

	// Output:
	// 2 items: 3x1
	// 6 items: 4x2
	// 10 items: 5x2
}
