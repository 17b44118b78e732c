/*
go-regiontrack provides the per frame region based appearance and posterior
machinery of a monocular object tracker.  For each frame it builds foreground
and background color histograms of the tracked object, seeded by a bounding
box or a rendered silhouette mask, and evaluates the dense two class
posterior of every pixel in the region of interest.

Supporting packages discretize the object heading into azimuth bins for
template lookup, generate control points of the object mesh, convert
renderer depth buffers to metric depth, and visualize the intermediate
results with GoCV.

See example code and usage in the example subdirectory.
*/
package regiontrack
