//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	TOPN          = 100  // ranked list length for words and docs
	GOODMASS      = 0.75 // share of the mass given to kept words
	JITTER        = 5    // +/- percent
	ADDEDTOPICS   = 4    // padded topics added to the annotated ones when -k is not set
	IMPKEEP       = 1    // editor export "importance" for a kept word
	IMPSTOP       = -2   // editor export "importance" for a stopped word
	RECONDROP     = "drop"
	RECONREASSIGN = "reassign"
	RECONDEFAULT  = RECONDROP
	PRIORSEP      = "\t"
	FREQSCALE     = 100 // topic proportions are reported as percentages
	MAPCHRTWIDTH  = "1200px"
	MAPCHRTHEIGHT = "900px"
	MAPSYMMIN     = 8
	MAPSYMMAX     = 60
)

var (
	MILESTONES = []int{10, 20, 30, 40, 50}
)
