package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

const defaultAxisThreshold int16 = 16000

var inputMappingBytes []byte

// SetInputMappingBytes installs a JSON mapping that takes precedence over
// INPUT_MAPPING_PATH.
func SetInputMappingBytes(data []byte) {
	inputMappingBytes = data
}

type JoystickAxisMapping struct {
	PositiveButton constants.VirtualButton
	NegativeButton constants.VirtualButton
	Threshold      int16
}

// InputMapping maps physical inputs to virtual buttons.
type InputMapping struct {
	KeyboardMap         map[sdl.Keycode]constants.VirtualButton
	ControllerButtonMap map[sdl.GameControllerButton]constants.VirtualButton
	JoystickAxisMap     map[uint8]JoystickAxisMapping
	JoystickButtonMap   map[uint8]constants.VirtualButton
	JoystickHatMap      map[uint8]constants.VirtualButton
}

type axisMappingJSON struct {
	PositiveButton int   `json:"positive_button"`
	NegativeButton int   `json:"negative_button"`
	Threshold      int16 `json:"threshold"`
}

// Mapping is the JSON form of an InputMapping. Keys are SDL codes, values
// are VirtualButton values.
type Mapping struct {
	KeyboardMap         map[int]int             `json:"keyboard_map"`
	ControllerButtonMap map[int]int             `json:"controller_button_map"`
	JoystickAxisMap     map[int]axisMappingJSON `json:"joystick_axis_map"`
	JoystickButtonMap   map[int]int             `json:"joystick_button_map"`
	JoystickHatMap      map[int]int             `json:"joystick_hat_map"`
}

// DefaultInputMapping covers a keyboard, a standard game controller and the
// Joy-Con hat and sticks as seen through the raw joystick API.
func DefaultInputMapping() *InputMapping {
	return &InputMapping{
		KeyboardMap: map[sdl.Keycode]constants.VirtualButton{
			sdl.K_UP:        constants.VirtualButtonUp,
			sdl.K_DOWN:      constants.VirtualButtonDown,
			sdl.K_LEFT:      constants.VirtualButtonLeft,
			sdl.K_RIGHT:     constants.VirtualButtonRight,
			sdl.K_RETURN:    constants.VirtualButtonA,
			sdl.K_KP_ENTER:  constants.VirtualButtonA,
			sdl.K_a:         constants.VirtualButtonA,
			sdl.K_ESCAPE:    constants.VirtualButtonB,
			sdl.K_BACKSPACE: constants.VirtualButtonB,
			sdl.K_b:         constants.VirtualButtonB,
			sdl.K_PAGEUP:    constants.VirtualButtonL1,
			sdl.K_PAGEDOWN:  constants.VirtualButtonR1,
			sdl.K_l:         constants.VirtualButtonL1,
			sdl.K_r:         constants.VirtualButtonR1,
			sdl.K_POWER:     constants.VirtualButtonPower,
		},
		ControllerButtonMap: map[sdl.GameControllerButton]constants.VirtualButton{
			sdl.CONTROLLER_BUTTON_DPAD_UP:       constants.VirtualButtonUp,
			sdl.CONTROLLER_BUTTON_DPAD_DOWN:     constants.VirtualButtonDown,
			sdl.CONTROLLER_BUTTON_DPAD_LEFT:     constants.VirtualButtonLeft,
			sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    constants.VirtualButtonRight,
			sdl.CONTROLLER_BUTTON_A:             constants.VirtualButtonB,
			sdl.CONTROLLER_BUTTON_B:             constants.VirtualButtonA,
			sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  constants.VirtualButtonL1,
			sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: constants.VirtualButtonR1,
			sdl.CONTROLLER_BUTTON_START:         constants.VirtualButtonStart,
			sdl.CONTROLLER_BUTTON_BACK:          constants.VirtualButtonSelect,
			sdl.CONTROLLER_BUTTON_GUIDE:         constants.VirtualButtonMenu,
		},
		JoystickAxisMap: map[uint8]JoystickAxisMapping{
			0: {PositiveButton: constants.VirtualButtonRight, NegativeButton: constants.VirtualButtonLeft, Threshold: defaultAxisThreshold},
			1: {PositiveButton: constants.VirtualButtonDown, NegativeButton: constants.VirtualButtonUp, Threshold: defaultAxisThreshold},
		},
		JoystickButtonMap: map[uint8]constants.VirtualButton{},
		JoystickHatMap: map[uint8]constants.VirtualButton{
			sdl.HAT_UP:    constants.VirtualButtonUp,
			sdl.HAT_DOWN:  constants.VirtualButtonDown,
			sdl.HAT_LEFT:  constants.VirtualButtonLeft,
			sdl.HAT_RIGHT: constants.VirtualButtonRight,
		},
	}
}

// GetInputMapping returns the mapping installed with SetInputMappingBytes,
// then the one at INPUT_MAPPING_PATH, then the default.
func GetInputMapping() *InputMapping {
	logger := logging.GetInternalLogger()

	if len(inputMappingBytes) > 0 {
		mapping, err := LoadInputMappingFromBytes(inputMappingBytes)
		if err == nil {
			logger.Info("Loaded custom input mapping from bytes")
			return mapping
		}
		logger.Warn("Failed to load custom input mapping from bytes, trying file path", "error", err)
	}

	if mappingPath := os.Getenv(constants.InputMappingEnvVar); mappingPath != "" {
		mapping, err := LoadInputMappingFromJSON(mappingPath)
		if err == nil {
			logger.Info("Loaded custom input mapping", "path", mappingPath)
			return mapping
		}
		logger.Warn("Failed to load custom input mapping, using default", "path", mappingPath, "error", err)
	}

	return DefaultInputMapping()
}

func LoadInputMappingFromJSON(filePath string) (*InputMapping, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	return LoadInputMappingFromBytes(data)
}

func LoadInputMappingFromBytes(data []byte) (*InputMapping, error) {
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	mapping := &InputMapping{
		KeyboardMap:         make(map[sdl.Keycode]constants.VirtualButton, len(m.KeyboardMap)),
		ControllerButtonMap: make(map[sdl.GameControllerButton]constants.VirtualButton, len(m.ControllerButtonMap)),
		JoystickAxisMap:     make(map[uint8]JoystickAxisMapping, len(m.JoystickAxisMap)),
		JoystickButtonMap:   make(map[uint8]constants.VirtualButton, len(m.JoystickButtonMap)),
		JoystickHatMap:      make(map[uint8]constants.VirtualButton, len(m.JoystickHatMap)),
	}

	for code, vb := range m.KeyboardMap {
		mapping.KeyboardMap[sdl.Keycode(code)] = constants.VirtualButton(vb)
	}
	for button, vb := range m.ControllerButtonMap {
		mapping.ControllerButtonMap[sdl.GameControllerButton(button)] = constants.VirtualButton(vb)
	}
	for axis, am := range m.JoystickAxisMap {
		threshold := am.Threshold
		if threshold <= 0 {
			threshold = defaultAxisThreshold
		}
		mapping.JoystickAxisMap[uint8(axis)] = JoystickAxisMapping{
			PositiveButton: constants.VirtualButton(am.PositiveButton),
			NegativeButton: constants.VirtualButton(am.NegativeButton),
			Threshold:      threshold,
		}
	}
	for button, vb := range m.JoystickButtonMap {
		mapping.JoystickButtonMap[uint8(button)] = constants.VirtualButton(vb)
	}
	for hat, vb := range m.JoystickHatMap {
		mapping.JoystickHatMap[uint8(hat)] = constants.VirtualButton(vb)
	}

	return mapping, nil
}

// ToJSON converts the mapping to its JSON form.
func (im *InputMapping) ToJSON() ([]byte, error) {
	m := Mapping{
		KeyboardMap:         make(map[int]int, len(im.KeyboardMap)),
		ControllerButtonMap: make(map[int]int, len(im.ControllerButtonMap)),
		JoystickAxisMap:     make(map[int]axisMappingJSON, len(im.JoystickAxisMap)),
		JoystickButtonMap:   make(map[int]int, len(im.JoystickButtonMap)),
		JoystickHatMap:      make(map[int]int, len(im.JoystickHatMap)),
	}

	for code, vb := range im.KeyboardMap {
		m.KeyboardMap[int(code)] = int(vb)
	}
	for button, vb := range im.ControllerButtonMap {
		m.ControllerButtonMap[int(button)] = int(vb)
	}
	for axis, am := range im.JoystickAxisMap {
		m.JoystickAxisMap[int(axis)] = axisMappingJSON{
			PositiveButton: int(am.PositiveButton),
			NegativeButton: int(am.NegativeButton),
			Threshold:      am.Threshold,
		}
	}
	for button, vb := range im.JoystickButtonMap {
		m.JoystickButtonMap[int(button)] = int(vb)
	}
	for hat, vb := range im.JoystickHatMap {
		m.JoystickHatMap[int(hat)] = int(vb)
	}

	return json.MarshalIndent(m, "", "  ")
}
