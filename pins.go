package main

// BCM pin numbers, everything is wired once at startup and never moved.
// I2C for the clock module uses the default bus on 2 and 3.
const (
	pinAnodeOnes     = 27
	pinAnodeTens     = 17
	pinAnodeHundreds = 4

	pinStatusLED = 26
	pinButton    = 21

	pinRed   = 12
	pinGreen = 16
	pinBlue  = 20

	pinLCDRS = 7
	pinLCDE  = 8
)

// segments a-g and the decimal point
var pinSegments = [8]int{22, 10, 9, 11, 5, 6, 13, 19}

// LCD data lines D4-D7
var pinLCDData = [4]int{25, 24, 23, 18}
