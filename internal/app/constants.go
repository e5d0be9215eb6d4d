package app

// SeatsRequiredToStart is the occupied-seat count needed before a match can
// deal. Baloot is always played four-handed; bots fill what humans do not.
const SeatsRequiredToStart = 4
