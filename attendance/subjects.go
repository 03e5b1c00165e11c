package attendance

import "defaulter-fixtures-go/models"

// DefaultSubjects returns the subject/teacher table for every stream, in stream order
func DefaultSubjects() models.SubjectAssignment {
	return models.SubjectAssignment{
		Order: []models.Stream{models.StreamIT, models.StreamDS, models.StreamCA, models.StreamAIML},
		ByStream: map[models.Stream][]models.Subject{
			models.StreamIT: {
				{Name: "Database Management Systems", TeacherID: "TCH001", TeacherName: "Dr. Meena Shah"},
				{Name: "Web Development", TeacherID: "TCH002", TeacherName: "Prof. Ramesh Iyer"},
				{Name: "Operating Systems", TeacherID: "TCH003", TeacherName: "Prof. Sneha Patel"},
				{Name: "Computer Networks", TeacherID: "TCH004", TeacherName: "Prof. Karan Verma"},
			},
			models.StreamDS: {
				{Name: "AI Fundamentals", TeacherID: "TCH008", TeacherName: "Prof. Amit Trivedi"},
				{Name: "Machine Learning", TeacherID: "TCH009", TeacherName: "Prof. Kavita Joshi"},
				{Name: "Statistics for Data Science", TeacherID: "TCH010", TeacherName: "Dr. Suresh Nair"},
				{Name: "Big Data Analytics", TeacherID: "TCH011", TeacherName: "Prof. Rutuja Gokhale"},
			},
			models.StreamCA: {
				{Name: "Cloud Computing", TeacherID: "TCH005", TeacherName: "Prof. Anil Kulkarni"},
				{Name: "Computer Architecture", TeacherID: "TCH006", TeacherName: "Dr. Priya Menon"},
				{Name: "Software Engineering", TeacherID: "TCH007", TeacherName: "Prof. Vikas Rao"},
				{Name: "Mobile Application Development", TeacherID: "TCH012", TeacherName: "Prof. Neha Bansal"},
			},
			models.StreamAIML: {
				{Name: "Deep Learning", TeacherID: "TCH013", TeacherName: "Dr. Arjun Pillai"},
				{Name: "Natural Language Processing", TeacherID: "TCH014", TeacherName: "Prof. Swati Deshmukh"},
				{Name: "Computer Vision", TeacherID: "TCH015", TeacherName: "Prof. Rohit Saxena"},
				{Name: "Reinforcement Learning", TeacherID: "TCH016", TeacherName: "Dr. Lakshmi Narayanan"},
			},
		},
	}
}
