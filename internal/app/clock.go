package app

import "time"

// timeNow is swapped out by tests.
var timeNow = time.Now
