package geometry

import (
	"math"
	"testing"
)

func TestCenterOf3Points(t *testing.T) {
	center, ok := CenterOf3Points(
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
		NewVector3(-1, 0, 0),
	)
	if !ok {
		t.Fatalf("CenterOf3Points failed: expected a center")
	}

	expected := NewVector3(0, 0, 0)
	if center.Distance(expected) > 1e-10 {
		t.Errorf("CenterOf3Points failed: expected %v, got %v", expected, center)
	}
}

func TestCenterOf3PointsTilted(t *testing.T) {
	// Circle of radius 2 around (1, 2, 3) in the plane x = 1
	c := NewVector3(1, 2, 3)
	a := c.Add(NewVector3(0, 2, 0))
	b := c.Add(NewVector3(0, 0, 2))
	d := c.Add(NewVector3(0, -math.Sqrt2, -math.Sqrt2))

	center, ok := CenterOf3Points(a, b, d)
	if !ok {
		t.Fatalf("CenterOf3Points failed: expected a center")
	}
	if center.Distance(c) > 1e-9 {
		t.Errorf("CenterOf3Points failed: expected %v, got %v", c, center)
	}
}

func TestCenterOf3PointsCollinear(t *testing.T) {
	_, ok := CenterOf3Points(
		NewVector3(0, 0, 0),
		NewVector3(1, 1, 1),
		NewVector3(2, 2, 2),
	)
	if ok {
		t.Errorf("CenterOf3Points failed: collinear points must not have a center")
	}

	_, ok = CenterOf3Points(
		NewVector3(1, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(2, 2, 2),
	)
	if ok {
		t.Errorf("CenterOf3Points failed: coincident points must not have a center")
	}
}

func TestAngleAt(t *testing.T) {
	angle := AngleAt(NewVector3(1, 0, 0), NewVector3(0, 0, 0), NewVector3(0, 5, 0))

	if math.Abs(angle-math.Pi/2) > 1e-10 {
		t.Errorf("AngleAt failed: expected %v, got %v", math.Pi/2, angle)
	}
}

func TestFitCircle(t *testing.T) {
	var points []Vector3
	for i := 0; i < 12; i++ {
		a := float64(i) * math.Pi / 12
		points = append(points, NewVector3(3*math.Cos(a), 3*math.Sin(a), 7))
	}

	fit, err := FitCircle(points)
	if err != nil {
		t.Fatalf("FitCircle failed: %v", err)
	}
	if math.Abs(fit.Radius-3) > 1e-9 {
		t.Errorf("Radius failed: expected 3, got %v", fit.Radius)
	}
	if fit.Center.Distance(NewVector3(0, 0, 7)) > 1e-9 {
		t.Errorf("Center failed: expected (0, 0, 7), got %v", fit.Center)
	}
	if math.Abs(math.Abs(fit.Normal.Z)-1) > 1e-9 {
		t.Errorf("Normal failed: expected +-Z, got %v", fit.Normal)
	}
	if fit.StdDev > 1e-9 {
		t.Errorf("StdDev failed: expected 0, got %v", fit.StdDev)
	}
}

func TestFitCircleErrors(t *testing.T) {
	if _, err := FitCircle([]Vector3{{}, {X: 1}}); err == nil {
		t.Errorf("FitCircle failed: expected error for two points")
	}
	if _, err := FitCircle([]Vector3{{}, {X: 1}, {X: 2}}); err == nil {
		t.Errorf("FitCircle failed: expected error for collinear points")
	}
}
