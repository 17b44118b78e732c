/*
Package geometry provides the bounding box algebra used when seeding
appearance models and matching regions between frames: intersection over
union, inflation of a seed box into a background ring and the enclosing box
of a point set.

All functions are pure and clip rather than fail when a region reaches
outside the image.
*/
package geometry
