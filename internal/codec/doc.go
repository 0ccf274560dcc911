// Package codec turns untrusted JSON into Dream records.
//
// Normalize is the boundary against arbitrary imported files. It is total:
// a non-object input is rejected with a false result, and every object
// produces a valid Dream with defaults for missing or malformed fields:
//
//   - clarity, emotionBefore, emotionAfter: unset unless a JSON number
//   - emotionalIntensity, sleepQuality: 0 unless a JSON number
//   - characters: empty unless a list; elements are stringified
//   - location, personalMeaning: empty string
//   - sleepDate, todayDate: the current instant when absent or unparseable
//   - id: kept when non-empty, otherwise synthesized
package codec
