package roster

// Default name pools. Some names repeat; repeats only make those names more likely.
var (
	DefaultFirstNames = []string{
		"Aarav", "Vivaan", "Aditya", "Arjun", "Sai", "Ayaan", "Krishna", "Ishaan", "Shaurya", "Atharva",
		"Advait", "Pranav", "Vedant", "Aryan", "Reyansh", "Aadhya", "Ananya", "Pari", "Anika", "Saanvi",
		"Sara", "Diya", "Navya", "Kiara", "Myra", "Ira", "Riya", "Avni", "Kavya", "Anvi",
		"Rahul", "Amit", "Priya", "Neha", "Rohan", "Sneha", "Vikram", "Anjali", "Karan", "Pooja",
		"Siddharth", "Divya", "Manish", "Ritika", "Varun", "Ishita", "Nikhil", "Tanvi", "Akash", "Megha",
		"Gaurav", "Shreya", "Harsh", "Nidhi", "Shubham", "Anushka", "Rajesh", "Meera", "Suresh", "Lakshmi",
		"Deepa", "Vijay", "Swati", "Naveen", "Bhavna", "Ramesh", "Sunita", "Mahesh", "Rekha", "Prakash",
		"Kavita", "Dinesh", "Seema", "Ashok", "Geeta", "Mukesh", "Nisha", "Ravi", "Anjana", "Sandeep",
		"Preeti", "Rohit", "Sonia", "Vikas", "Ritu", "Sunil", "Anita", "Manoj", "Priyanka", "Ajay",
		"Neelam", "Praveen", "Kiran", "Sanjay", "Madhuri", "Sapna", "Deepak", "Alka", "Yash", "Sakshi",
		"Ayush", "Tanya", "Kabir", "Sana", "Vihaan", "Zara", "Advika", "Arnav", "Samaira", "Dhruv",
		"Anaya", "Rudra", "Shanaya", "Aarush", "Ahana", "Shivansh", "Navika", "Veer", "Palak", "Arush",
		"Advik", "Pihu", "Aanya", "Vivaan", "Nitya", "Krish", "Mira", "Aayan", "Zoya", "Aaradhya",
		"Shlok", "Mahika", "Devansh", "Roshni", "Kabir", "Mishka", "Rian", "Amaira", "Arnav", "Ishani",
		"Parth", "Aarohi", "Tanish", "Avika", "Aditya", "Drishti", "Aryan", "Aarna", "Viraj", "Kiaan",
	}

	DefaultLastNames = []string{
		"Kumar", "Singh", "Sharma", "Gupta", "Verma", "Patel", "Reddy", "Nair", "Desai", "Iyer",
		"Mehta", "Joshi", "Rao", "Deshmukh", "Agarwal", "Malhotra", "Pandey", "Mishra", "Kapoor", "Tiwari",
		"Saxena", "Chopra", "Sinha", "Bansal", "Khanna", "Bhatia", "Dutta", "Goyal", "Arora", "Roy",
		"Bhatt", "Jain", "Menon", "Pillai", "Nambiar", "Krishnan", "Srinivasan", "Subramanian", "Raman", "Narayanan",
		"Shah", "Modi", "Gandhi", "Thakur", "Yadav", "Chauhan", "Rajput", "Bisht", "Rawat", "Garg",
		"Aggarwal", "Sethi", "Kohli", "Bose", "Das", "Sen", "Chatterjee", "Mukherjee", "Banerjee", "Ghosh",
		"Kulkarni", "Patil", "Pawar", "Shinde", "Jadhav", "Chavan", "Sawant", "More", "Gaikwad", "Kamble",
		"Rana", "Bhandari", "Soni", "Jha", "Dubey", "Tripathi", "Upadhyay", "Shukla", "Dwivedi", "Pandey",
		"Rane", "Kadam", "Bhosale", "Mane", "Salvi", "Naik", "Shirke", "Wagh", "Raut", "Thorat",
		"Saini", "Gill", "Sandhu", "Virk", "Grewal", "Dhillon", "Brar", "Sidhu", "Randhawa", "Mann",
	}
)
