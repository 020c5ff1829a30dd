package base

// StatusCode is the code returned to the OS.
type StatusCode uint8

// Status codes returned by the main executable.
const (
	SNoError StatusCode = iota
	SGenericError
	SHelpRequested
	SInvalidParameters
	SInitializationError
	SApplicationError
	SUserError
)

var statusNames = [...]string{
	SNoError:             "NoError",
	SGenericError:        "GenericError",
	SHelpRequested:       "HelpRequested",
	SInvalidParameters:   "InvalidParameters",
	SInitializationError: "InitializationError",
	SApplicationError:    "ApplicationError",
	SUserError:           "UserError",
}

func (s StatusCode) String() string {
	if int(s) >= len(statusNames) {
		return "Unknown"
	}
	return statusNames[s]
}

// FlagMask specifies the common flags a command opts out of.
type FlagMask int

const (
	DefaultFlags   FlagMask = 0
	OmitOutputFlag FlagMask = 1 << iota
	OmitConfigFlag
	OmitTimezoneFlag
	OmitFormatFlag

	OmitAll = OmitOutputFlag |
		OmitConfigFlag |
		OmitTimezoneFlag |
		OmitFormatFlag
)
